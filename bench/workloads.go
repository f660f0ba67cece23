// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"runtime"

	"golang.org/x/exp/constraints"

	"vatomic/core"
	"vatomic/vatomic"
)

func bits[T constraints.Unsigned]() uint {
	return uint(vatomic.Width[T]().Bits())
}

// add: every worker increments the cell; final = workers * iterations.
type addWorkload[T constraints.Unsigned] struct {
	cell *T
	o    core.Ordering
	exp  T
}

func (w *addWorkload[T]) Name() string              { return "add" }
func (w *addWorkload[T]) Selection() core.Selection { return core.SelectionRMWs }

func (w *addWorkload[T]) Reset(cfg Config) {
	w.o = cfg.Ordering
	w.exp = T(cfg.Ops())
	vatomic.Store(w.cell, 0)
}

func (w *addWorkload[T]) Work(_, n int) {
	for i := 0; i < n; i++ {
		vatomic.FetchAddExplicit(w.cell, 1, w.o)
	}
}

func (w *addWorkload[T]) Verify(Config) error {
	if v := vatomic.Load(w.cell); v != w.exp {
		return verifyErrorf(w, "final value %d, expected %d", v, w.exp)
	}
	return nil
}

func (w *addWorkload[T]) Observed() string {
	return fmt.Sprintf("final=%d", vatomic.Load(w.cell))
}

// sub: every worker decrements a cell holding workers * iterations; final = 0.
type subWorkload[T constraints.Unsigned] struct {
	cell *T
	o    core.Ordering
}

func (w *subWorkload[T]) Name() string              { return "sub" }
func (w *subWorkload[T]) Selection() core.Selection { return core.SelectionRMWs }

func (w *subWorkload[T]) Reset(cfg Config) {
	w.o = cfg.Ordering
	vatomic.Store(w.cell, T(cfg.Ops()))
}

func (w *subWorkload[T]) Work(_, n int) {
	for i := 0; i < n; i++ {
		vatomic.FetchSubExplicit(w.cell, 1, w.o)
	}
}

func (w *subWorkload[T]) Verify(Config) error {
	if v := vatomic.Load(w.cell); v != 0 {
		return verifyErrorf(w, "final value %d, expected 0", v)
	}
	return nil
}

func (w *subWorkload[T]) Observed() string {
	return fmt.Sprintf("final=%d", vatomic.Load(w.cell))
}

// cas: every worker increments the cell with a compare-exchange loop.
type casWorkload[T constraints.Unsigned] struct {
	cell    *T
	o       core.Ordering
	exp     T
	retries []uint64
	bad     []uint64
}

func (w *casWorkload[T]) Name() string              { return "cas" }
func (w *casWorkload[T]) Selection() core.Selection { return core.SelectionCmpxchg }

func (w *casWorkload[T]) Reset(cfg Config) {
	w.o = cfg.Ordering
	w.exp = T(cfg.Ops())
	w.retries = make([]uint64, cfg.Workers)
	w.bad = make([]uint64, cfg.Workers)
	vatomic.Store(w.cell, 0)
}

func (w *casWorkload[T]) Work(worker, n int) {
	var retries, bad uint64
	for i := 0; i < n; i++ {
		cur := vatomic.LoadExplicit(w.cell, core.Relaxed)
		for {
			exp := cur
			if vatomic.CompareExchangeExplicit(w.cell, &cur, cur+1, w.o, w.o) {
				break
			}
			retries++
			// a failure must report a value other than the expected one
			if cur == exp {
				bad++
			}
		}
	}
	w.retries[worker] = retries
	w.bad[worker] = bad
}

func (w *casWorkload[T]) Verify(Config) error {
	if bad := sum(w.bad); bad != 0 {
		return verifyErrorf(w, "%d failed exchanges returned the expected value", bad)
	}
	if v := vatomic.Load(w.cell); v != w.exp {
		return verifyErrorf(w, "final value %d, expected %d", v, w.exp)
	}
	return nil
}

func (w *casWorkload[T]) Observed() string {
	return fmt.Sprintf("final=%d retries=%d", vatomic.Load(w.cell), sum(w.retries))
}

// xchg: workers exchange unique tokens into the cell. The tokens taken out
// plus the one left in the cell are the tokens put in.
type xchgWorkload[T constraints.Unsigned] struct {
	cell  *T
	o     core.Ordering
	given []uint64
	taken []uint64
}

func (w *xchgWorkload[T]) Name() string              { return "xchg" }
func (w *xchgWorkload[T]) Selection() core.Selection { return core.SelectionRMWs }

func (w *xchgWorkload[T]) Reset(cfg Config) {
	w.o = cfg.Ordering
	w.given = make([]uint64, cfg.Workers)
	w.taken = make([]uint64, cfg.Workers)
	vatomic.Store(w.cell, 0)
}

func (w *xchgWorkload[T]) Work(worker, n int) {
	var given, taken uint64
	for i := 0; i < n; i++ {
		v := T(uint64(worker)*uint64(n) + uint64(i) + 1)
		taken += uint64(vatomic.ExchangeExplicit(w.cell, v, w.o))
		given += uint64(v)
	}
	w.given[worker] = given
	w.taken[worker] = taken
}

func (w *xchgWorkload[T]) Verify(Config) error {
	var (
		mask  = vatomic.Width[T]().Mask()
		final = uint64(vatomic.Load(w.cell))
		in    = sum(w.given) & mask
		out   = (sum(w.taken) + final) & mask
	)
	if in != out {
		return verifyErrorf(w, "tokens in %#x, tokens out %#x", in, out)
	}
	return nil
}

func (w *xchgWorkload[T]) Observed() string {
	return fmt.Sprintf("final=%d", vatomic.Load(w.cell))
}

// and, or, xor: every worker applies its own one-bit mask. The final value
// does not depend on the order of the operations.
type logicWorkload[T constraints.Unsigned] struct {
	cell *T
	op   core.AtomicOp
	o    core.Ordering
	exp  T
}

func (w *logicWorkload[T]) Name() string              { return w.op.Name() }
func (w *logicWorkload[T]) Selection() core.Selection { return core.SelectionRMWs }

func (w *logicWorkload[T]) mask(worker int) T {
	return T(1) << (uint(worker) % bits[T]())
}

func (w *logicWorkload[T]) Reset(cfg Config) {
	w.o = cfg.Ordering
	var init T
	if w.op == core.And {
		init = ^T(0)
	}
	w.exp = init
	for i := 0; i < cfg.Workers; i++ {
		m := w.mask(i)
		switch w.op {
		case core.And:
			w.exp &^= m
		case core.Or:
			w.exp |= m
		case core.Xor:
			if cfg.Iterations%2 == 1 {
				w.exp ^= m
			}
		}
	}
	vatomic.Store(w.cell, init)
}

func (w *logicWorkload[T]) Work(worker, n int) {
	m := w.mask(worker)
	switch w.op {
	case core.And:
		m = ^m
		for i := 0; i < n; i++ {
			vatomic.FetchAndExplicit(w.cell, m, w.o)
		}
	case core.Or:
		for i := 0; i < n; i++ {
			vatomic.FetchOrExplicit(w.cell, m, w.o)
		}
	case core.Xor:
		for i := 0; i < n; i++ {
			vatomic.FetchXorExplicit(w.cell, m, w.o)
		}
	}
}

func (w *logicWorkload[T]) Verify(Config) error {
	if v := vatomic.Load(w.cell); v != w.exp {
		return verifyErrorf(w, "final value %#x, expected %#x", v, w.exp)
	}
	return nil
}

func (w *logicWorkload[T]) Observed() string {
	return fmt.Sprintf("final=%#x", vatomic.Load(w.cell))
}

// store: workers store and load back byte-replicated patterns. Any value
// observed must be one of the patterns.
type storeWorkload[T constraints.Unsigned] struct {
	cell    *T
	o       core.Ordering
	workers int
	torn    []uint64
}

const replicate = 0x0101010101010101

func (w *storeWorkload[T]) Name() string              { return "store" }
func (w *storeWorkload[T]) Selection() core.Selection { return core.SelectionAccess }

func (w *storeWorkload[T]) pattern(worker int) T {
	return T(uint64(0x11*(worker%15+1)) * replicate)
}

func (w *storeWorkload[T]) valid(v T) bool {
	b := uint64(v) & 0xff
	if v != T(b*replicate) {
		return false
	}
	return b == 0 || b%0x11 == 0 && int(b/0x11) <= min(w.workers, 15)
}

func (w *storeWorkload[T]) Reset(cfg Config) {
	w.o = cfg.Ordering
	w.workers = cfg.Workers
	w.torn = make([]uint64, cfg.Workers)
	vatomic.Store(w.cell, 0)
}

func (w *storeWorkload[T]) Work(worker, n int) {
	var (
		p    = w.pattern(worker)
		torn uint64
	)
	for i := 0; i < n; i++ {
		vatomic.StoreExplicit(w.cell, p, w.o)
		if !w.valid(vatomic.LoadExplicit(w.cell, w.o)) {
			torn++
		}
	}
	w.torn[worker] = torn
}

func (w *storeWorkload[T]) Verify(Config) error {
	if torn := sum(w.torn); torn != 0 {
		return verifyErrorf(w, "%d torn loads", torn)
	}
	if v := vatomic.Load(w.cell); !w.valid(v) {
		return verifyErrorf(w, "final value %#x is no stored pattern", v)
	}
	return nil
}

func (w *storeWorkload[T]) Observed() string {
	return fmt.Sprintf("final=%#x", vatomic.Load(w.cell))
}

// flag: a test-and-set spinlock guards a plain counter.
type flagWorkload struct {
	c   *Cells
	o   core.Ordering
	exp uint64
}

func (w *flagWorkload) Name() string              { return "flag" }
func (w *flagWorkload) Selection() core.Selection { return core.SelectionFlags }

func (w *flagWorkload) Reset(cfg Config) {
	w.o = cfg.Ordering
	w.exp = uint64(cfg.Ops())
	w.c.Lock.Clear()
	vatomic.Store(&w.c.Guarded, 0)
}

func (w *flagWorkload) Work(_, n int) {
	for i := 0; i < n; i++ {
		for w.c.Lock.TestAndSetExplicit(w.o) {
		}
		w.c.Guarded++
		w.c.Lock.ClearExplicit(w.o)
	}
}

// The lock only guarantees mutual exclusion when test-and-set acquires and
// clear releases; weaker runs report the lost increments.
func (w *flagWorkload) guards() bool {
	return w.o.HasAcquire() && w.o.HasRelease()
}

func (w *flagWorkload) Verify(Config) error {
	if v := vatomic.Load(&w.c.Guarded); v != w.exp && w.guards() {
		return verifyErrorf(w, "guarded counter %d, expected %d", v, w.exp)
	}
	if w.c.Lock.IsSet() {
		return verifyErrorf(w, "lock left set")
	}
	return nil
}

func (w *flagWorkload) Observed() string {
	v := vatomic.Load(&w.c.Guarded)
	if v != w.exp {
		return fmt.Sprintf("guarded=%d lost=%d", v, w.exp-v)
	}
	return fmt.Sprintf("guarded=%d", v)
}

// sb: store buffering. Workers 0 and 1 each store 1 to their variable, fence
// and load the other variable. With sequentially consistent fences at least
// one of them reads 1.
type sbWorkload struct {
	c      *Cells
	o      core.Ordering
	r      [2]uint32
	n      int
	paired bool
	both   uint64
}

func (w *sbWorkload) Name() string              { return "sb" }
func (w *sbWorkload) Selection() core.Selection { return core.SelectionFences }

func (w *sbWorkload) Reset(cfg Config) {
	w.o = cfg.Ordering
	w.n = cfg.Iterations
	w.paired = cfg.Workers >= 2
	w.both = 0
	w.r = [2]uint32{}
	vatomic.Store(&w.c.X, 0)
	vatomic.Store(&w.c.Y, 0)
	vatomic.Store(&w.c.Arrive, 0)
}

// barrier returns once both workers called it for the k-th time.
func (w *sbWorkload) barrier(k uint64) {
	vatomic.FetchAdd(&w.c.Arrive, 1)
	for vatomic.Load(&w.c.Arrive) < 2*(k+1) {
		runtime.Gosched()
	}
}

func (w *sbWorkload) Work(worker, n int) {
	if worker > 1 || !w.paired {
		return
	}
	mine, other := &w.c.X, &w.c.Y
	if worker == 1 {
		mine, other = other, mine
	}
	for i := 0; i < n; i++ {
		k := uint64(2 * i)
		w.barrier(k)
		vatomic.StoreExplicit(mine, 1, core.Relaxed)
		vatomic.ThreadFence(w.o)
		vatomic.StoreExplicit(&w.r[worker], vatomic.LoadExplicit(other, core.Relaxed), core.Relaxed)
		w.barrier(k + 1)
		if worker == 0 {
			if vatomic.Load(&w.r[0]) == 0 && vatomic.Load(&w.r[1]) == 0 {
				w.both++
			}
			vatomic.StoreExplicit(&w.c.X, 0, core.Relaxed)
			vatomic.StoreExplicit(&w.c.Y, 0, core.Relaxed)
		}
	}
}

func (w *sbWorkload) Verify(Config) error {
	if w.o == core.SeqCst && w.both != 0 {
		return verifyErrorf(w, "r0=r1=0 observed %d times with seq_cst fences", w.both)
	}
	return nil
}

func (w *sbWorkload) Observed() string {
	if !w.paired {
		return "needs 2 workers"
	}
	return fmt.Sprintf("r0=r1=0 %d/%d", w.both, w.n)
}

func sum(x []uint64) uint64 {
	var s uint64
	for _, v := range x {
		s += v
	}
	return s
}
