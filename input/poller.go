//go:build linux

package input

import (
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/kungfusheep/bezel/geometry"
)

const (
	tokenStdin = iota
	tokenResize
	tokenWake
)

// Waker lets any goroutine ask the poller thread to re-check its receiver
// count (spec.md §4.2.1's token 2, "wake" handle) without otherwise
// disturbing it.
type Waker struct {
	writeFd int
}

// Wake writes a single byte to the self-pipe backing this waker.
func (w *Waker) Wake() {
	var b [1]byte
	_, _ = unix.Write(w.writeFd, b[:])
}

// Poller is the single dedicated OS thread that owns stdin and the resize
// signal (spec.md §4.2.1), grounded on the teacher's Screen's SIGWINCH
// handling in screen.go, generalized from signal.Notify polling to an
// epoll-multiplexed self-pipe per the spec's event-mechanism requirement.
type Poller struct {
	epfd       int
	stdinFd    int
	resizeRd   int
	resizeWr   int
	wakeRd     int
	wakeWr     int
	sizeQuery  func() (geometry.Size, error)
	recvCount  func() int
	buf        [4096]byte
	parser     *VT100Parser
	readCount  int // bytes read on the previous stdin read, for the "more" hint
}

// NewPoller builds a poller reading stdinFd, querying terminal size via
// sizeQuery, and consulting recvCount to decide when to exit (spec.md
// §4.2.1 step 3: "if zero, exit").
func NewPoller(stdinFd int, sizeQuery func() (geometry.Size, error), recvCount func() int) (*Poller, *Waker, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, nil, err
	}
	resizeRd, resizeWr, err := pipe2NonBlock()
	if err != nil {
		unix.Close(epfd)
		return nil, nil, err
	}
	wakeRd, wakeWr, err := pipe2NonBlock()
	if err != nil {
		unix.Close(epfd)
		unix.Close(resizeRd)
		unix.Close(resizeWr)
		return nil, nil, err
	}

	p := &Poller{
		epfd: epfd, stdinFd: stdinFd,
		resizeRd: resizeRd, resizeWr: resizeWr,
		wakeRd: wakeRd, wakeWr: wakeWr,
		sizeQuery: sizeQuery, recvCount: recvCount,
		parser: NewVT100Parser(),
	}
	for token, fd := range map[int]int{tokenStdin: stdinFd, tokenResize: resizeRd, tokenWake: wakeRd} {
		ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
		_ = token
		if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
			p.Close()
			return nil, nil, err
		}
	}
	return p, &Waker{writeFd: wakeWr}, nil
}

func pipe2NonBlock() (rd, wr int, err error) {
	var fds [2]int
	if err = unix.Pipe2(fds[:], unix.O_NONBLOCK); err != nil {
		return 0, 0, err
	}
	return fds[0], fds[1], nil
}

// Close releases the poller's file descriptors.
func (p *Poller) Close() {
	unix.Close(p.epfd)
	unix.Close(p.resizeRd)
	unix.Close(p.resizeWr)
	unix.Close(p.wakeRd)
	unix.Close(p.wakeWr)
}

// WatchResizeSignal starts a goroutine forwarding SIGWINCH onto the
// poller's resize self-pipe; this is the "signal-hook adapter exposes it
// as an fd" piece of spec.md §4.2.1.
func (p *Poller) WatchResizeSignal() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				var b [1]byte
				_, _ = unix.Write(p.resizeWr, b[:])
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

// Run locks the calling goroutine to its OS thread (spec.md §4.2.1: "a
// single dedicated OS thread") and runs the poll loop until recvCount
// reports zero subscribers or stdin hits EOF/error. emit is called for
// each PollerEvent the loop produces.
func (p *Poller) Run(emit func(PollerEvent)) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	events := make([]unix.EpollEvent, 3)
	for {
		n, err := unix.EpollWait(p.epfd, events, -1)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			emit(PollerEvent{Kind: PollerStdinError, Err: err})
			return
		}
		for i := 0; i < n; i++ {
			fd := int(events[i].Fd)
			switch fd {
			case p.stdinFd:
				if done := p.handleStdin(emit); done {
					return
				}
			case p.resizeRd:
				p.handleResize(emit)
			case p.wakeRd:
				p.drainWake()
			}
		}
		if p.recvCount != nil && p.recvCount() == 0 {
			return
		}
	}
}

func (p *Poller) handleStdin(emit func(PollerEvent)) (done bool) {
	n, err := unix.Read(p.stdinFd, p.buf[:])
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false
		}
		emit(PollerEvent{Kind: PollerStdinError, Err: err})
		return true
	}
	if n == 0 {
		emit(PollerEvent{Kind: PollerStdinEOF})
		return true
	}
	more := n == len(p.buf)
	p.readCount = n
	for _, ev := range p.parser.Feed(p.buf[:n], more) {
		emit(PollerEvent{Kind: PollerStdinInput, Event: ev})
	}
	return false
}

func (p *Poller) handleResize(emit func(PollerEvent)) {
	var drain [64]byte
	for {
		n, err := unix.Read(p.resizeRd, drain[:])
		if err != nil || n == 0 {
			break
		}
	}
	if p.sizeQuery == nil {
		return
	}
	size, err := p.sizeQuery()
	if err != nil {
		return
	}
	emit(PollerEvent{Kind: PollerSignalResize, Size: size})
}

func (p *Poller) drainWake() {
	var drain [64]byte
	for {
		n, err := unix.Read(p.wakeRd, drain[:])
		if err != nil || n == 0 {
			break
		}
	}
}
