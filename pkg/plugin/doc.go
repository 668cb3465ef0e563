// Package plugin runs named graph algorithms configured by parameter sets.
//
// # Overview
//
// A [Plugin] declares its parameters with defaults and runs against a graph.
// Callers never construct parameter maps by hand: they ask for the defaults,
// override what they need and apply the plugin by name:
//
//	ds, err := plugin.DefaultParameters("Export image", g)
//	if err != nil {
//	    return err
//	}
//	ds.Set("Property", selection)
//	ds.Set("dir::Export directory", "/tmp")
//	ds.Set("Export pattern", "mask.png")
//	if err := plugin.Apply(ctx, g, "Export image", ds); err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
//
// # Parameter Names
//
// Parameter names follow a prefix convention that tells front ends how to
// edit the value: "dir::" marks a directory and "file::" a file path. The
// prefix is part of the key.
//
// # Registries
//
// [Default] is the process-wide registry; plugin packages register
// themselves into it from init. Tests can build an isolated [Registry] with
// [NewRegistry].
package plugin
