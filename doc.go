// Package threelove binds declarative component lifecycles to an imperative
// scene graph rendered with [Ebitengine].
//
// A threelove program describes its scene as a tree of components. Components
// render no visible output themselves; instead each one uses [UseScene] to tie
// the construction, mutation, and removal of scene objects to its own
// mount/update/unmount lifecycle. The library guarantees that a component's
// setup runs exactly once per mount, that prop-driven updates never re-run
// setup, and that teardown removes exactly what setup added.
//
// # Quick start
//
// [SceneManager] owns the scene root, camera, canvas, and renderer, and
// publishes them to every descendant component:
//
//	box := threelove.ComponentFunc(func(ctx *threelove.Ctx) error {
//		_ = threelove.UseScene(ctx, nil,
//			func(res *threelove.Resources, _ threelove.Props) (*threelove.Sprite, error) {
//				s := threelove.NewSprite()
//				s.X, s.Y = 320, 240
//				s.ScaleX, s.ScaleY = 40, 40
//				res.Scene.Add(s)
//				return s, nil
//			}, nil)
//		return nil
//	})
//
//	m := threelove.NewSceneManager(threelove.ManagerConfig{
//		Width: 640, Height: 480,
//	}, box)
//	threelove.Run(m, threelove.RunConfig{Title: "Box", Width: 640, Height: 480})
//
// When the component unmounts, the sprite is removed from the scene root
// automatically (the default destroy policy). Supply an explicit destroy
// function to UseScene for entities composed of several objects.
//
// # Lifecycle bindings
//
// [UseScene] manages one entity per component instance. Setup runs once at
// mount, after the shared resource bundle is available. The returned accessor
// reports the entity, or absence before mount and after unmount. [UseChange]
// runs an update callback only when its dependency values change between
// renders, never on mount.
//
// # Forwarding handles
//
// [Ref] and [Wrap] let a parent obtain a live handle to an object a child
// constructs. The SceneManager itself is built this way: canvas, camera, and
// renderer wrappers publish their handles into refs the manager collects into
// the shared [Resources] bundle.
//
// # Shared resources
//
// [Resources] carries the scene root, camera, canvas, and renderer to any
// descendant without manual prop threading. The bundle is an immutable value;
// descendants read it through [Ctx.Resources], which fails with
// [ErrResourcesNotReady] rather than handing out a partially constructed
// bundle.
//
// [Ebitengine]: https://ebitengine.org
package threelove
