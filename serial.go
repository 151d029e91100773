// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import "code.hybscloud.com/atomix"

// Serial identifies a submission accepted by a Poller.
// Serials increase monotonically across all pollers in the process.
type Serial = uint64

var serials atomix.Uint64

func nextSerial() Serial {
	return serials.Add(1)
}
