// Covidash - COVID-19 Data Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/covidash

/*
Package cache provides a generic, thread-safe LRU cache.

The API layer memoizes rendered figures per filter selection. The observation
table never changes after startup, so entries never go stale and are only
dropped by eviction; capacity bounds memory.

	figures := cache.NewLRU[dashboard.Selection, render.Options](256,
	    cache.WithEvictCallback(func(dashboard.Selection, render.Options) {
	        metrics.CacheEvictions.WithLabelValues("figures").Inc()
	    }),
	)
	if opts, ok := figures.Get(sel); ok {
	    return opts
	}
*/
package cache
