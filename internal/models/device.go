package models

type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceDesktop DeviceClass = "desktop"
)

func (device DeviceClass) IsMobile() bool {
	return device == DeviceMobile
}

func (device DeviceClass) IsTablet() bool {
	return device == DeviceTablet
}
