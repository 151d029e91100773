// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package slot

import "go.uber.org/zap"

// Option configures a Poller.
type Option func(*options)

type options struct {
	logger        *zap.Logger
	queueCapacity int
}

func defaultOptions() options {
	return options{
		logger:        zap.NewNop(),
		queueCapacity: MaxSlots,
	}
}

// WithLogger sets the logger used by the poll loop. The default discards
// everything. A nil logger keeps the default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithQueueCapacity sets the capacity of the submission queue.
// Rounded up to a power of two, minimum 2. Default MaxSlots.
func WithQueueCapacity(n int) Option {
	return func(o *options) {
		o.queueCapacity = max(n, 2)
	}
}
