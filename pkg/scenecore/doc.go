/*
Package scenecore provides the resource-lifecycle and asynchronous-loading
core of a real-time scene-graph engine.

# Overview

scenecore tracks every device-bound (GPU) resource and every
per-frame-updatable object owned by a rendering context, and runs a
background worker that builds new scene subgraphs from asset data and
safely grafts them into the live, concurrently-rendered scene.

Two components carry the weight:

  - Manager owns the resource registries and device-context validity.
    It drives the per-frame cycle and the context acquire/lose cycle, so
    resources never touch the device API outside a valid context.
  - Loader owns a single worker goroutine that dequeues load requests,
    builds an independent subtree off the render thread, and hands it
    off through a one-shot synchronization rendezvous before invoking
    the caller's callback exactly once per request.

# Basic Usage

Wire a Manager and a Loader against your device and asset store, then
pump PerFrameUpdate from the render loop:

	manager := scenecore.NewManager(device)
	loader := scenecore.NewLoader(builder, manager.Barrier(),
	    scenecore.WithFlush(manager.PerFrameUpdate))

	if err := loader.StartLoading(scenecore.NewStoreRuntime(openStore)); err != nil {
	    log.Fatal(err)
	}
	defer loader.StopLoading()

	if err := manager.OnDeviceContextAcquired(); err != nil {
	    log.Fatal(err)
	}

	ship := node.NewGroup("ship-anchor")
	scene.AddChild(ship)
	loader.EnqueueLoad("models/ship.obj", ship, func(target *node.Group, err error) {
	    if err != nil {
	        log.Printf("load failed: %v", err)
	        return
	    }
	    // target now contains the built content; runs on the render thread.
	})

	for running {
	    manager.PerFrameUpdate() // services the barrier, promotes, updates
	    render()
	}

# Resource Lifecycle

Resources embed ResourceBase and implement the two device hooks. Attach
them through Manager.AddResource at any point; they wait in a staging
registry and are promoted (and initialized, if the context is valid) at
the start of the next frame. On context loss every resource is shut
down once; on reacquire every survivor is initialized again under a new
epoch.

# Grafting

The live scene graph is mutated only inside the synchronization
rendezvous: the worker parks at Manager.Barrier() and the render thread
fires the graft while servicing it in PerFrameUpdate. The completion
callback always observes a fully grafted target, and fires at most once
per request.

# Observability

Structured logging uses log/slog throughout. OpenTelemetry metrics and
tracing are opt-in:

	manager := scenecore.NewManager(device,
	    scenecore.WithLogger(logger),
	    scenecore.WithMetrics(true))
	loader := scenecore.NewLoader(builder, manager.Barrier(),
	    scenecore.WithLoaderMetrics(true),
	    scenecore.WithLoaderTracing(true))

See the config subpackage and ManagerOptionsFromConfig for file-driven
tuning.
*/
package scenecore
