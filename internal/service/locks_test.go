package service

import (
	"sync"
	"testing"
)

func TestLearnerLocks_Serializes(t *testing.T) {
	locks := NewLearnerLocks()

	var wg sync.WaitGroup
	counter := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("amina")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 increments, got %d", counter)
	}
	if len(locks.locks) != 0 {
		t.Fatalf("expected released locks to be dropped, got %d", len(locks.locks))
	}
}

func TestLearnerLocks_IndependentLearners(t *testing.T) {
	locks := NewLearnerLocks()

	unlockA := locks.Lock("amina")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("baraka")
		unlock()
		close(done)
	}()
	<-done
}
