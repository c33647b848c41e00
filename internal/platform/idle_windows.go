package platform

import (
	"fmt"
	"time"
	"unsafe"

	"campuszen/internal/core/timekeeper"

	"golang.org/x/sys/windows"
)

var procGetLastInputInfo = windows.NewLazySystemDLL("user32.dll").NewProc("GetLastInputInfo")

type idleProvider struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider() timekeeper.IdleChecker {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		return 0, fmt.Errorf("get last input info: %w", err)
	}

	// dwTime is a 32-bit tick count that wraps every 49.7 days.
	idleMillis := uint32(windows.GetTickCount64()) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
