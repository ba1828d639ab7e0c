// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package cache

import "time"

// Clock abstracts time for TTL expiry checks. Production code uses the
// system clock; tests inject a fake to make expiry deterministic.
type Clock interface {
	Now() time.Time
}

// systemClock reads the real time.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real-time clock used by default.
func SystemClock() Clock { return systemClock{} }
