// Tripwise - Travel Place Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tripwise

/*
Package supervisor runs the server's long-lived services under a suture
supervisor tree.

	tripwise (root)
	├── data-layer
	│   └── dataset-refresh   (services.DatasetRefreshService)
	└── api-layer
	    └── http-server       (services.HTTPServerService)

Services that return an error are restarted with suture's failure backoff.
Supervisor events are logged through sutureslog, which writes to the zerolog
logger via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewDatasetRefreshService(store, services.DatasetRefreshConfig{Interval: time.Hour}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
