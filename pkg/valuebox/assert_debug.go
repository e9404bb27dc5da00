//go:build valuebox_debug

package valuebox

func onPrecondition(err error) {
	panic(err)
}
