// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

/*
Package supervisor runs watch mode under a suture v4 supervisor tree.

	cinerate (root)
	├── source-layer
	│   └── data-watcher       (internal/watcher)
	└── training-layer
	    └── retrain-service    (internal/supervisor/services)

Services that return an error are restarted with suture's failure decay and
backoff (see TreeConfig). Returning suture.ErrDoNotRestart ends a service for
good. Lifecycle events are logged through the zerolog-backed slog handler
from internal/logging:

	slogger := logging.NewSlogLogger(logging.WithComponent("supervisor"))
	tree := supervisor.NewTree(slogger, supervisor.TreeConfig{
	    FailureBackoff:  cfg.Supervisor.FailureBackoff,
	    ShutdownTimeout: cfg.Supervisor.ShutdownTimeout,
	})
	tree.AddSourceService(w)
	tree.AddTrainingService(services.NewRetrainService(session, w.Events(), svcCfg, logger))
	err := tree.Serve(ctx)
*/
package supervisor
