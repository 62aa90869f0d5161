package services

import "github.com/terraincognita07/paycharts/internal/models"

const (
	MobileBreakpointWidth  = 768
	DesktopBreakpointWidth = 1024
	DefaultViewportWidth   = 1200
)

func ResolveDeviceClass(widthPx int) models.DeviceClass {
	switch {
	case widthPx < MobileBreakpointWidth:
		return models.DeviceMobile
	case widthPx < DesktopBreakpointWidth:
		return models.DeviceTablet
	default:
		return models.DeviceDesktop
	}
}

func MaxSeriesForDevice(device models.DeviceClass) int {
	switch device {
	case models.DeviceMobile:
		return 2
	case models.DeviceTablet:
		return 3
	default:
		return 5
	}
}
