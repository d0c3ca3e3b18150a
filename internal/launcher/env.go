package launcher

import (
	"strings"

	"github.com/spf13/afero"
)

// environment returns the variables to add for Wayland and GPU
// compatibility. Variables the user already set are left alone.
func (l *Launcher) environment() []string {
	var env []string
	env = append(env, l.waylandEnv()...)
	env = append(env, l.gpuEnv()...)
	return env
}

// setIfUnset appends key=value unless the user already set key
func (l *Launcher) setIfUnset(env []string, key, value string) []string {
	if l.getenv(key) != "" {
		l.log.Debug("Keeping user environment", key, l.getenv(key))
		return env
	}
	return append(env, key+"="+value)
}

// waylandEnv lets SDL pick Wayland with an X11 fallback
func (l *Launcher) waylandEnv() []string {
	waylandDisplay := l.getenv("WAYLAND_DISPLAY")
	if waylandDisplay == "" {
		l.log.Debug("Not running on Wayland")
		return nil
	}

	l.log.Debug("Wayland detected, setting up environment", "display", waylandDisplay)

	// SDL 2.0.22+ accepts a list of drivers to try in order
	env := l.setIfUnset(nil, "SDL_VIDEODRIVER", "wayland,x11")

	l.log.Debug("Wayland environment variables set", "vars", env)
	return env
}

// gpuEnv sets the OpenGL vendor hints DOSBox's opengl output needs
func (l *Launcher) gpuEnv() []string {
	switch detectGPUVendor(l.fs) {
	case "nvidia":
		// GLX through XWayland picks the wrong vendor library on NVIDIA
		if l.getenv("WAYLAND_DISPLAY") == "" {
			return nil
		}
		l.log.Debug("NVIDIA GPU on Wayland detected")
		return l.setIfUnset(nil, "__GLX_VENDOR_LIBRARY_NAME", "nvidia")

	case "amd", "intel":
		l.log.Debug("Mesa GPU detected, using defaults")
		return nil

	default:
		l.log.Debug("Unknown GPU vendor, using defaults")
		return nil
	}
}

// detectGPUVendor attempts to detect the GPU vendor from /sys
func detectGPUVendor(fs afero.Fs) string {
	// Check common GPU vendor IDs in sysfs
	vendorPaths := []string{
		"/sys/class/drm/card0/device/vendor",
		"/sys/class/drm/card1/device/vendor",
	}

	for _, path := range vendorPaths {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			continue
		}

		vendor := strings.TrimSpace(string(data))
		switch vendor {
		case "0x1002": // AMD
			return "amd"
		case "0x10de": // NVIDIA
			return "nvidia"
		case "0x8086": // Intel
			return "intel"
		}
	}

	// Fallback: check for loaded kernel modules
	modules, err := afero.ReadFile(fs, "/proc/modules")
	if err == nil {
		moduleStr := string(modules)
		if strings.Contains(moduleStr, "amdgpu") || strings.Contains(moduleStr, "radeon") {
			return "amd"
		}
		if strings.Contains(moduleStr, "nvidia") {
			return "nvidia"
		}
		if strings.Contains(moduleStr, "i915") {
			return "intel"
		}
	}

	return "unknown"
}
