// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package payrolltest

import (
	"github.com/diffeo/go-payroll/payroll"
)

// TestFindMissing checks that an ID that was never saved is not found.
func (s *Suite) TestFindMissing() {
	s.AssertMissing(s.UnusedID())
}

// TestCreate checks that saving a new employee assigns a fresh
// identity and that the record can be read back.
func (s *Suite) TestCreate() {
	e := s.Create("Samwise Gamgee", "gardener")
	s.Equal("Samwise", e.FirstName)
	s.Equal("Gamgee", e.LastName)
	s.Equal("gardener", e.Role)

	found, err := s.Repository.FindByID(s.Context(), e.ID)
	if s.NoError(err) {
		s.Equal(e, found)
	}
}

// TestCreateUnique checks that every automatically assigned ID is new.
func (s *Suite) TestCreateUnique() {
	seen := make(map[int64]bool)
	for _, e := range s.All() {
		seen[e.ID] = true
	}
	for i := 0; i < 5; i++ {
		e := s.Create("Merry Brandybuck", "squire")
		s.False(seen[e.ID], "reused id %v", e.ID)
		seen[e.ID] = true
	}
}

// TestCreateEmpty checks that empty names and roles are
// stored as given, not rejected.
func (s *Suite) TestCreateEmpty() {
	e, err := s.Repository.Save(s.Context(), payroll.Employee{})
	if !s.NoError(err) {
		return
	}
	s.NotZero(e.ID)
	found, err := s.Repository.FindByID(s.Context(), e.ID)
	if s.NoError(err) {
		s.Equal("", found.Name())
		s.Equal("", found.Role)
	}
}

// TestFindAll checks that creating N employees grows the collection
// by N, and that each element matches the single-record lookup.
func (s *Suite) TestFindAll() {
	before := s.All()
	created := []payroll.Employee{
		s.Create("Peregrin Took", "guard"),
		s.Create("Meriadoc Brandybuck", "esquire"),
		s.Create("Gandalf", "wizard"),
	}
	after := s.All()
	s.Len(after, len(before)+len(created))
	for _, e := range created {
		s.Contains(after, e)
	}
	for i, e := range after {
		if i > 0 {
			s.True(after[i-1].ID < e.ID, "not ordered by id")
		}
		found, err := s.Repository.FindByID(s.Context(), e.ID)
		if s.NoError(err) {
			s.Equal(e, found)
		}
	}
}

// TestSaveExisting checks that saving with the ID of an existing
// record overwrites it in place.
func (s *Suite) TestSaveExisting() {
	e := s.Create("Bilbo Baggins", "burglar")
	before := len(s.All())

	replacement := payroll.NewEmployee("Bilbo Baggins", "ring bearer")
	replacement.ID = e.ID
	saved, err := s.Repository.Save(s.Context(), replacement)
	if !s.NoError(err) {
		return
	}
	s.Equal(replacement, saved)

	found, err := s.Repository.FindByID(s.Context(), e.ID)
	if s.NoError(err) {
		s.Equal(e.ID, found.ID)
		s.Equal("Bilbo Baggins", found.Name())
		s.Equal("ring bearer", found.Role)
	}
	s.Len(s.All(), before)
}

// TestSaveNewID checks that saving with an ID nobody has used stores
// the record under exactly that ID, and that doing it again changes
// nothing.
func (s *Suite) TestSaveNewID() {
	id := s.UnusedID()
	e := payroll.NewEmployee("Tom Bombadil", "master")
	e.ID = id

	saved, err := s.Repository.Save(s.Context(), e)
	if !s.NoError(err) {
		return
	}
	s.Equal(e, saved)
	after := s.All()

	saved, err = s.Repository.Save(s.Context(), e)
	if !s.NoError(err) {
		return
	}
	s.Equal(e, saved)
	s.Equal(after, s.All())

	found, err := s.Repository.FindByID(s.Context(), id)
	if s.NoError(err) {
		s.Equal(e, found)
	}
}

// TestAssignAfterExplicitID checks that automatic ID assignment does
// not collide with an ID that was supplied explicitly.
func (s *Suite) TestAssignAfterExplicitID() {
	id := s.UnusedID()
	e := payroll.NewEmployee("Radagast", "wizard")
	e.ID = id
	_, err := s.Repository.Save(s.Context(), e)
	if !s.NoError(err) {
		return
	}

	next := s.Create("Saruman", "wizard")
	s.NotEqual(id, next.ID)
	found, err := s.Repository.FindByID(s.Context(), id)
	if s.NoError(err) {
		s.Equal("Radagast", found.Name())
	}
}

// TestSaveNegativeID checks that negative identities are rejected.
func (s *Suite) TestSaveNegativeID() {
	e := payroll.NewEmployee("Gollum", "thief")
	e.ID = -1
	_, err := s.Repository.Save(s.Context(), e)
	s.Error(err)
}

// TestDelete checks that a deleted record is gone and that deleting
// it again is not an error.
func (s *Suite) TestDelete() {
	e := s.Create("Boromir", "captain")
	before := len(s.All())

	err := s.Repository.DeleteByID(s.Context(), e.ID)
	s.NoError(err)
	s.AssertMissing(e.ID)
	s.Len(s.All(), before-1)

	err = s.Repository.DeleteByID(s.Context(), e.ID)
	s.NoError(err)
	s.AssertMissing(e.ID)
}

// TestDeleteMissing checks that deleting an ID that never existed
// succeeds.
func (s *Suite) TestDeleteMissing() {
	s.NoError(s.Repository.DeleteByID(s.Context(), s.UnusedID()))
}

// TestDeleteKeepsOthers checks that deleting one record leaves its
// neighbours alone.
func (s *Suite) TestDeleteKeepsOthers() {
	a := s.Create("Elrond", "lord")
	b := s.Create("Arwen", "lady")
	s.NoError(s.Repository.DeleteByID(s.Context(), a.ID))
	found, err := s.Repository.FindByID(s.Context(), b.ID)
	if s.NoError(err) {
		s.Equal(b, found)
	}
}
