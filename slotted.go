// Package slotted renders trees of HTML components and compiles static trees
// into reusable templates with per-request slots.
//
// A tree is built from tagged nodes, leaves and slots:
//
//	var Name = slotted.NewSlotKeyWithDefault("name", "World")
//
//	root := slotted.NewTag("p").
//	    WithInnerText("Hello ").
//	    WithChild(slotted.NewSlot(Name))
//
// # Rendering Directly
//
// Every component renders itself against a RenderContext:
//
//	rc := slotted.NewRenderContext()
//	slotted.Put(rc, Name, "Rust")
//	html := root.Render(rc) // <p>Hello Rust</p>
//
// # Compiled Templates
//
// Compile walks the tree once and produces a flat list of segments. Adjacent
// literal markup is merged, so rendering a template only concatenates strings
// and resolves slots:
//
//	tmpl := slotted.Compile(root)
//	html := tmpl.Render(rc)
//
// A Template is immutable and safe to share. A RenderContext belongs to one
// render.
//
// # Slot Resolution
//
// A slot with no entry renders its key's default, or nothing. Live values are
// escaped unless they are components, which render with the same context.
// Compiled entries are trusted HTML and are emitted verbatim:
//
//	rc.PutCompiled(Name, "<b>Rust</b>")
//
// With PolicyCompileOnFirstHit, a live entry is replaced by its rendered HTML
// the first time it is read. Defaults are never stored.
//
// # Modules
//
// A Module assembles its children exactly once, on the first Build, Render or
// Compile. A DynamicModule additionally caches its first rendered HTML and
// substitutes registered placeholders on later calls:
//
//	card := slotted.NewDynamicModule("div", func(d *slotted.DynamicModule) {
//	    d.WithChild(slotted.NewTag("h2").WithInnerText("Stats"))
//	    d.AddDynamic("count")
//	})
//	html, err := card.RenderWithDynamic(nil, slotted.Dynamic("count", slotted.Text("42")))
//
// # Engine
//
// Engine keeps named templates and adds logging, tracing, metrics and an
// optional fragment cache (memory, Redis or PostgreSQL):
//
//	engine := slotted.MustNew(slotted.WithLogger(logger))
//	engine.MustRegisterTemplate(ctx, "greeting", root)
//	html, err := engine.Render(ctx, "greeting", engine.NewContext())
package slotted

// Version is the library version reported by the CLI.
const Version = "0.1.0"
