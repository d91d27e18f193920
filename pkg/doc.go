// Package pkg provides the core libraries for trusspole structural sizing.
//
// # Overview
//
// Trusspole sizes modular lattice poles: it enumerates bracing
// configurations, analyzes each one under its own converged self weight,
// checks every member against the design code, and keeps the lightest
// compliant tower. The pkg directory is organized into five main areas:
//
//  1. [truss] - Geometry generation and linear analysis
//  2. [loads] - Service and self weight load assembly
//  3. [sizing] - Member checks and connection sizing
//  4. [optimize] - Configuration search and convergence
//  5. [profile], [report] - Section catalogs and result output
//
// # Architecture
//
// The typical data flow through trusspole:
//
//	Tower outline + load hypotheses
//	         ↓
//	    [optimize] package (enumerate diagonal counts)
//	         ↓
//	    [truss] package (generate topology, solve)
//	         ↓
//	    [sizing] package (check members, upsize profiles)
//	         ↓
//	    [report] package (tables, XLSX, PDF, DOT/SVG)
//
// # Quick Start
//
// Search for the lightest configuration:
//
//	import (
//	    "context"
//	    "github.com/trusspole/trusspole/pkg/loads"
//	    "github.com/trusspole/trusspole/pkg/optimize"
//	    "github.com/trusspole/trusspole/pkg/truss"
//	)
//
//	opts := optimize.Options{
//	    Geometry: truss.Geometry{
//	        ModuleHeights: []float64{300, 300, 400},
//	        BaseWidth:     180,
//	        TopWidth:      60,
//	    },
//	    Hypotheses: []loads.Hypothesis{
//	        {Name: "Fh(+)", Horizontal: []float64{445, 883, 1293}},
//	    },
//	}
//	res, err := optimize.Run(context.Background(), opts)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Printf("best: %v at %.1f kg\n", res.Best.Diagonals, res.Best.Weight)
//
// Supporting packages: [errors] defines the structured error codes shared
// across the module, [observability] exposes progress hooks, and
// [buildinfo] carries build-time version information.
package pkg
