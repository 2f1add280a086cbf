package utils

import (
	"sync"

	"github.com/xlab/closer"
)

//Shutdown - exit/done handshake between a render loop and the interrupt
//handler. The handler asks the loop to exit and blocks until the loop has torn
//down, closer exits the process only after that.
type Shutdown struct {
	exitC    chan struct{}
	doneC    chan struct{}
	exitOnce sync.Once
	doneOnce sync.Once
}

func NewShutdown() *Shutdown {
	return &Shutdown{
		exitC: make(chan struct{}),
		doneC: make(chan struct{}),
	}
}

//Bind registers the interrupt handler with closer. Defer Done right after, so
//it runs behind every later deferred teardown.
func (s *Shutdown) Bind() {
	closer.Bind(s.Interrupt)
}

//Exit asks the loop to stop, safe to call more than once
func (s *Shutdown) Exit() {
	s.exitOnce.Do(func() { close(s.exitC) })
}

//Exiting is closed once Exit was called
func (s *Shutdown) Exiting() <-chan struct{} {
	return s.exitC
}

//Interrupt - Exit then wait for Done
func (s *Shutdown) Interrupt() {
	s.Exit()
	<-s.doneC
}

//Done releases a waiting Interrupt
func (s *Shutdown) Done() {
	s.doneOnce.Do(func() { close(s.doneC) })
}
