// Package ghost manages onion-skin "ghost" snapshots inside a retained 3D
// scene graph rendered with [Ebitengine].
//
// A ghost is a locked, time-stamped duplicate of a character's geometry. The
// package creates ghosts per character and per frame, wires each one into an
// indexed input slot of a shared outline render node, keeps a per-character
// timeline of the frames that have ghosts, and deletes them by frame, by
// character or all at once while keeping the slots and timeline consistent.
//
// # Quick start
//
// [Scene] is the in-process scene graph. A [Session] binds to it, creating the
// render node, the snapshot container and the timeline container on first use:
//
//	scene := ghost.NewScene()
//	scene.CreateMesh("hero", ghost.NewBoxGeometry(1, 2, 1), "")
//
//	session, err := ghost.NewSession(scene, ghost.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	session.CreateOverRange("hero", []string{"hero"}, 1, 24, 4)
//
// Draw the scene from an [ebiten.Game]:
//
//	func (g *Game) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }
//
// # Scene graph
//
// The engine only talks to the [SceneGraph] interface, which addresses nodes,
// plugs and display layers by name. [Scene] implements it with transforms,
// mesh shapes and outline shapes, lockable transform channels, keyframed
// animation curves (interpolated with [gween]), attribute connections and
// display layers. A host application can supply its own implementation.
//
// # Snapshots
//
// Creation operations take object names, or the current selection when none
// are given; [Session.MeshSources] expands groups to the mesh transforms
// beneath them. Snapshots are named "<character>_<time>_ghost" and parented
// under the container node at the world placement of their source. Each is stamped with its character, time and creation
// sequence; the sequence decides its render slot. Each character has a
// KeyHolder named "<character>_keyholder" under the timeline node, keyed at
// every frame that has a snapshot.
//
// # Configuration and observability
//
// Reserved names and defaults come from [Config], loadable from GHOST_*
// environment variables with [LoadConfigFromEnv]. Sessions log through
// log/slog, count activity through optional Prometheus collectors
// ([NewMetrics]) and publish lifecycle events to an [EventSink]; the ghost/ecs
// module forwards those into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package ghost
