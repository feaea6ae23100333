//go:build cgo

package screen

import "github.com/go-vgo/robotgo"

func systemScale(index int) float64 {
	return robotgo.SysScale(index)
}
