// Copyright (c) 2026 H. Ugur Yildiz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rubric loads the static evaluation configuration.

The rubric is a YAML file naming the project groups under evaluation and
the criteria they are scored against:

	groups:
	  - id: g1
	    name: Team Alpha
	    description: Autonomous greenhouse
	    members: [Ada, Grace]
	criteria:
	  - id: c1
	    label: Technical Depth
	    max_score: 10

Load it once at startup:

	rb, err := rubric.LoadFile(cfg.RubricPath)

Parse validates ids for presence and uniqueness and requires positive
max scores; a deployment with a broken rubric refuses to start rather
than serve partial reference data.
*/
package rubric
