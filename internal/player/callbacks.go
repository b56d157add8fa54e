package player

/*
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

// These run on libmpv's threads. They only hand off to Go closures that
// queue a signal; none of them may call back into libmpv.

//export goMpvWakeup
func goMpvWakeup(handle C.uintptr_t) {
	fn := cgo.Handle(uintptr(handle)).Value().(func())
	fn()
}

//export goMpvRenderUpdate
func goMpvRenderUpdate(handle C.uintptr_t) {
	fn := cgo.Handle(uintptr(handle)).Value().(func())
	fn()
}

//export goMpvGetProcAddress
func goMpvGetProcAddress(handle C.uintptr_t, name *C.char) unsafe.Pointer {
	resolve := cgo.Handle(uintptr(handle)).Value().(ProcAddressFunc)
	return resolve(C.GoString(name))
}
