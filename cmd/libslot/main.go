// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// libslot exposes the process-wide slot table through a C ABI, for hosts
// that poll native futures from a single thread and cannot accept
// callbacks on other threads:
//
//	go build -buildmode=c-shared -o libslot.so ./cmd/libslot
//
// The host allocates a slot, passes slot_get_callback() and
// slot_token(slot) to the engine's poll function, reads
// slot_get_result(slot) from its own thread, rearms with
// slot_reset_result on 1 (wake again) and calls slot_free on 0 (ready).
package main

/*
#include <stdint.h>

typedef void (*slot_callback_fn)(uint64_t user_data, int8_t result_code);

void slot_callback(uint64_t user_data, int8_t result_code);
*/
import "C"

import (
	"unsafe"

	"code.hybscloud.com/slot"
)

//export slot_alloc
func slot_alloc() C.int32_t {
	id, err := slot.Alloc()
	if err != nil {
		return -1
	}
	return C.int32_t(id)
}

//export slot_free
func slot_free(id C.int32_t) {
	slot.Free(slot.ID(id))
}

//export slot_get_result
func slot_get_result(id C.int32_t) C.int8_t {
	return C.int8_t(slot.Load(slot.ID(id)))
}

//export slot_reset_result
func slot_reset_result(id C.int32_t) {
	slot.Reset(slot.ID(id))
}

//export slot_token
func slot_token(id C.int32_t) C.uint64_t {
	return C.uint64_t(slot.TokenOf(slot.ID(id)))
}

//export slot_capacity
func slot_capacity() C.int32_t {
	return C.int32_t(slot.Default().Cap())
}

// slot_callback accepts either a bare slot index or a token from
// slot_token as user_data. result_code 0 records ready (0); any other
// value, -1 included, records wake again (1).
//
//export slot_callback
func slot_callback(userData C.uint64_t, resultCode C.int8_t) {
	slot.Notify(uint64(userData), int8(resultCode))
}

//export slot_get_callback
func slot_get_callback() unsafe.Pointer {
	return unsafe.Pointer(C.slot_callback_fn(C.slot_callback))
}

func main() {}
