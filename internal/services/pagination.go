package services

import (
	"sync"

	"github.com/terraincognita07/paycharts/internal/models"
)

func ItemsPerPage(device models.DeviceClass, total int) int {
	switch device {
	case models.DeviceMobile:
		return minInt(3, total)
	case models.DeviceTablet:
		return minInt(4, total)
	default:
		return total
	}
}

func TotalPages(itemsPerPage int, total int) int {
	if itemsPerPage <= 0 || itemsPerPage >= total {
		return 1
	}
	return (total + itemsPerPage - 1) / itemsPerPage
}

func Paginate(records []models.Record, device models.DeviceClass, page int) models.PageWindow {
	total := len(records)
	perPage := ItemsPerPage(device, total)
	pages := TotalPages(perPage, total)
	page = clampInt(page, 0, pages-1)

	if perPage >= total {
		return models.PageWindow{Page: page, ItemsPerPage: perPage, TotalPages: pages, Visible: records}
	}

	start := page * perPage
	end := minInt(start+perPage, total)
	return models.PageWindow{
		Page:         page,
		ItemsPerPage: perPage,
		TotalPages:   pages,
		Visible:      records[start:end],
	}
}

// Pager holds the page index of one mounted chart. Any device class change
// sends it back to the first page.
type Pager struct {
	mu     sync.Mutex
	device models.DeviceClass
	page   int
}

func NewPager(device models.DeviceClass) *Pager {
	return &Pager{device: device}
}

func (pager *Pager) Page() int {
	pager.mu.Lock()
	defer pager.mu.Unlock()
	return pager.page
}

func (pager *Pager) Device() models.DeviceClass {
	pager.mu.Lock()
	defer pager.mu.Unlock()
	return pager.device
}

func (pager *Pager) SetDevice(device models.DeviceClass) bool {
	pager.mu.Lock()
	defer pager.mu.Unlock()

	if pager.device == device {
		return false
	}
	pager.device = device
	pager.page = 0
	return true
}

func (pager *Pager) Window(records []models.Record) models.PageWindow {
	pager.mu.Lock()
	defer pager.mu.Unlock()

	window := Paginate(records, pager.device, pager.page)
	pager.page = window.Page
	return window
}

func (pager *Pager) Next(totalPages int) bool {
	pager.mu.Lock()
	defer pager.mu.Unlock()
	return pager.goToLocked(pager.page+1, totalPages)
}

func (pager *Pager) Previous(totalPages int) bool {
	pager.mu.Lock()
	defer pager.mu.Unlock()
	return pager.goToLocked(pager.page-1, totalPages)
}

// GoTo moves to page when it lies inside [0, totalPages-1] and reports whether
// the page changed. Out-of-range targets are ignored.
func (pager *Pager) GoTo(page int, totalPages int) bool {
	pager.mu.Lock()
	defer pager.mu.Unlock()
	return pager.goToLocked(page, totalPages)
}

func (pager *Pager) goToLocked(page int, totalPages int) bool {
	if page < 0 || page >= totalPages || page == pager.page {
		return false
	}
	pager.page = page
	return true
}

func (pager *Pager) Reset() {
	pager.mu.Lock()
	defer pager.mu.Unlock()
	pager.page = 0
}

func minInt(left int, right int) int {
	if left < right {
		return left
	}
	return right
}

func clampInt(value int, low int, high int) int {
	if high < low {
		return low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
