// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package payroll

import (
	"context"

	"github.com/sirupsen/logrus"
)

// SeedEmployees are the sample records Preload saves.
var SeedEmployees = []Employee{
	NewEmployee("Bilbo Baggins", "burglar"),
	NewEmployee("Frodo Baggins", "thief"),
}

// Preload saves the SeedEmployees into repo.  It does not check
// whether they are already present, so running it twice against
// persistent storage produces duplicates.  Returns the saved records.
func Preload(ctx context.Context, repo Repository, log logrus.FieldLogger) ([]Employee, error) {
	saved := make([]Employee, 0, len(SeedEmployees))
	for _, e := range SeedEmployees {
		e, err := repo.Save(ctx, e)
		if err != nil {
			return saved, err
		}
		log.WithFields(logrus.Fields{
			"id":   e.ID,
			"name": e.Name(),
			"role": e.Role,
		}).Info("Preloading")
		saved = append(saved, e)
	}
	return saved, nil
}
