package service

import "time"

// SetClock replaces the service clock in tests.
func SetClock(svc GameService, now func() time.Time) {
	svc.(*gameServiceImpl).now = now
}
