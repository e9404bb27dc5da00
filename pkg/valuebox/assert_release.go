//go:build !valuebox_debug

package valuebox

func onPrecondition(error) {}
