// Cinerate - Movie Rating Prediction Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerate

/*
Package services provides suture.Service wrappers for watch mode.

RetrainService reruns the load-to-train pipeline whenever the data watcher
reports a settled change, and optionally on a fixed interval. A failed run
(an unreadable or empty file, a training error) is logged and reported
through OnResult; the service keeps running and the previous model stays
in place until a later run succeeds. Only context cancellation ends Serve.

	svc := services.NewRetrainService(session, w.Events(), services.RetrainServiceConfig{
	    TrainOnStartup:  true,
	    RetrainInterval: cfg.Watch.RetrainInterval,
	    OnResult: func(res *pipeline.TrainResult, err error) {
	        ...
	    },
	}, logger)
	tree.AddTrainingService(svc)
*/
package services
