package usecase

import "time"

// SetClock replaces the time source of the usecase.
func (u *AccountUsecase[K]) SetClock(now func() time.Time) {
	u.now = now
}
