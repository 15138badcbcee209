// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// the payroll Repository.  There is no persistence, nor is there any
// automatic sharing.  The entire store is behind a single semaphore
// to protect against concurrent updates.
//
// This is mostly intended as a simple reference implementation that
// can be used for testing, including in-process testing of
// higher-level components such as the REST server.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/diffeo/go-payroll/payroll"
)

// New creates a new, empty Repository that operates purely in memory.
func New() payroll.Repository {
	return &memRepository{
		employees: make(map[int64]payroll.Employee),
		nextID:    1,
	}
}

type memRepository struct {
	employees map[int64]payroll.Employee
	nextID    int64
	exhausted bool
	sem       sync.Mutex
}

// do runs f under the global lock.
func (r *memRepository) do(f func() error) error {
	r.sem.Lock()
	defer r.sem.Unlock()
	return f()
}

func (r *memRepository) FindByID(ctx context.Context, id int64) (e payroll.Employee, err error) {
	err = r.do(func() error {
		var present bool
		e, present = r.employees[id]
		if !present {
			return payroll.ErrNoSuchEmployee{ID: id}
		}
		return nil
	})
	return
}

func (r *memRepository) FindAll(ctx context.Context) (all []payroll.Employee, err error) {
	err = r.do(func() error {
		all = make([]payroll.Employee, 0, len(r.employees))
		for _, e := range r.employees {
			all = append(all, e)
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return
}

func (r *memRepository) Save(ctx context.Context, e payroll.Employee) (payroll.Employee, error) {
	if e.ID < 0 {
		return payroll.Employee{}, payroll.ErrBadID
	}
	err := r.do(func() error {
		if e.ID == 0 {
			if r.exhausted {
				return payroll.ErrNoMoreIDs
			}
			e.ID = r.nextID
		}
		// Never hand out an ID a caller has already claimed
		switch {
		case e.ID == math.MaxInt64:
			r.exhausted = true
		case e.ID >= r.nextID:
			r.nextID = e.ID + 1
		}
		r.employees[e.ID] = e
		return nil
	})
	if err != nil {
		return payroll.Employee{}, err
	}
	return e, nil
}

func (r *memRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.do(func() error {
		delete(r.employees, id)
		return nil
	})
}
