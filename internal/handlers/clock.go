package handlers

import "time"

// timeNow is swapped out in tests that need a fixed clock.
var timeNow = time.Now
