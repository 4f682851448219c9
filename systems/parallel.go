package systems

import (
	"runtime"
	"sync"
)

// forceChunk represents a range of targets for a worker to process.
type forceChunk struct {
	start, end int
	engine     *Engine
	dst        Impulses
	particles  []Snapshot
	dt         float32
}

// forcePool holds persistent workers for the force pass.
// Workers only run inside Compute; the caller blocks until every chunk is done.
type forcePool struct {
	numWorkers int
	threshold  int

	workChan chan forceChunk // sends work to workers
	doneWG   sync.WaitGroup  // chunks in flight
	stopChan chan struct{}   // signals workers to exit
	wg       sync.WaitGroup  // tracks active workers
	running  bool
}

// EnableParallel starts a worker pool used when the particle count reaches
// threshold. workers <= 0 uses GOMAXPROCS. workers == 1 keeps the serial pass.
func (e *Engine) EnableParallel(workers, threshold int) {
	e.Close()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 2 {
		return
	}
	if threshold < 2 {
		threshold = 2
	}
	p := &forcePool{numWorkers: workers, threshold: threshold}
	p.start()
	e.pool = p
}

// Close stops the worker pool, if any.
func (e *Engine) Close() {
	if e.pool == nil {
		return
	}
	e.pool.stop()
	e.pool = nil
}

// Parallel reports whether a worker pool is attached.
func (e *Engine) Parallel() bool {
	return e.pool != nil
}

func (p *forcePool) shouldRun(n int) bool {
	return p.running && n >= p.threshold
}

// start launches persistent worker goroutines.
func (p *forcePool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan forceChunk, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *forcePool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *forcePool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.engine.computeRange(chunk.dst, chunk.particles, chunk.dt, chunk.start, chunk.end)
			p.doneWG.Done()
		}
	}
}

// run splits targets into contiguous chunks and waits for all of them.
func (p *forcePool) run(e *Engine, dst Impulses, particles []Snapshot, dt float32) {
	n := len(particles)
	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		p.doneWG.Add(1)
		p.workChan <- forceChunk{
			start:     start,
			end:       end,
			engine:    e,
			dst:       dst,
			particles: particles,
			dt:        dt,
		}
	}

	p.doneWG.Wait()
}
