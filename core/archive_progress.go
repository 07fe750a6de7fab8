package core

import (
	"io"
	"math"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	suffixes = [5]string{"B", "KB", "MB", "GB", "TB"}
)

func round(val float64, roundOn float64, places int) (newVal float64) {
	var round float64
	pow := math.Pow(10, float64(places))
	digit := pow * val
	_, div := math.Modf(digit)
	if div >= roundOn {
		round = math.Ceil(digit)
	} else {
		round = math.Floor(digit)
	}
	newVal = round / pow
	return
}

func humanFileSize(size float64) string {
	if size < 1 {
		return "0 B"
	}
	base := math.Log(size) / math.Log(1024)
	getSize := round(math.Pow(1024, base-math.Floor(base)), .5, 2)
	getSuffix := suffixes[int(math.Min(math.Floor(base), float64(len(suffixes)-1)))]
	return strconv.FormatFloat(getSize, 'f', -1, 64) + " " + getSuffix
}

// archiveProgressCounter counts bytes written during an extraction and
// reports the running total every interval until closed.
type archiveProgressCounter struct {
	written    atomic.Int64
	onProgress func(written string)
	printTimer *time.Ticker
	done       chan struct{}
	finished   chan struct{}
}

func newArchiveProgressCounter(interval time.Duration, onProgress func(written string)) io.WriteCloser {
	this := &archiveProgressCounter{
		onProgress: onProgress,
		printTimer: time.NewTicker(interval),
		done:       make(chan struct{}),
		finished:   make(chan struct{}),
	}
	go this.listen()
	return this
}

func (this *archiveProgressCounter) Write(p []byte) (n int, e error) {
	n = len(p)
	this.written.Add(int64(n))
	return
}

func (this *archiveProgressCounter) Close() error {
	close(this.done)
	<-this.finished
	this.printTimer.Stop()
	this.reportProgress()
	return nil
}

func (this *archiveProgressCounter) listen() {
	defer close(this.finished)
	for {
		select {
		case <-this.printTimer.C:
			this.reportProgress()
		case <-this.done:
			return
		}
	}
}

func (this *archiveProgressCounter) reportProgress() {
	this.onProgress(humanFileSize(float64(this.written.Load())))
}
