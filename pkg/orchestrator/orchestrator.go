// Package orchestrator runs the scene pipeline: validation and layout once,
// then style resolution and rendering for every node in paint order.
//
// An Orchestrator holds only configuration. Each Render call owns a fresh
// style cache, so concurrent builds never share state.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/layout"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
	"golang.org/x/sync/errgroup"
)

// Options configures an Orchestrator. Zero values select defaults.
type Options struct {
	Layout  layout.Config
	Render  render.Config
	Profile style.Profile
	// Workers bounds parallel rendering; <= 0 means GOMAXPROCS.
	Workers int
	// Kernel builds perspective solids; nil means the sdfx kernel.
	Kernel kernel.Kernel
}

// Orchestrator coordinates layout, styling and rendering.
type Orchestrator struct {
	layout   *layout.Engine
	dispatch *render.Dispatcher
	profile  style.Profile
	workers  int
}

// New returns an orchestrator. A nil profile selects the built-in default.
func New(opts Options) *Orchestrator {
	p := opts.Profile
	if p == nil {
		p, _ = style.Builtin(style.DefaultProfile)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Orchestrator{
		layout:   layout.New(opts.Layout),
		dispatch: render.NewDispatcher(opts.Render, opts.Kernel),
		profile:  p,
		workers:  workers,
	}
}

// Profile returns the style profile in use.
func (o *Orchestrator) Profile() style.Profile { return o.profile }

// Dispatcher exposes the renderer table, e.g. to register extra kinds
// before the first build.
func (o *Orchestrator) Dispatcher() *render.Dispatcher { return o.dispatch }

// BuildScene validates elements and lays them out. Validation warnings are
// logged; validation errors and unresolvable layouts are returned.
func (o *Orchestrator) BuildScene(elements []scene.ParsedElement, canvas geom.Size) (*scene.SceneGraph, error) {
	res := scene.Validate(elements)
	for _, w := range res.Warnings {
		logger.Warn("Element degraded", "element", w.ID, "reason", w.Message)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("validate scene: %w", err)
	}

	g, err := o.layout.Layout(elements, canvas)
	if err != nil {
		return nil, fmt.Errorf("layout scene: %w", err)
	}
	logger.Debug("Scene laid out", "nodes", g.Len(), "layers", len(g.Layers()))
	return g, nil
}

// Render resolves every node's style and draws the graph. Nodes that cannot
// be drawn become placeholders; only cancellation of ctx fails the call.
func (o *Orchestrator) Render(ctx context.Context, g *scene.SceneGraph) (*render.Document, error) {
	// Styled copies; the graph itself is never written.
	nodes := make([]*scene.SceneNode, len(g.Nodes))
	for i, n := range g.Nodes {
		cp := *n
		nodes[i] = &cp
	}
	sort.SliceStable(nodes, func(i, j int) bool { return scene.Less(nodes[i], nodes[j]) })

	// Styles are resolved before the parallel phase so definition order
	// follows paint order.
	resolver := style.NewResolver()
	for _, n := range nodes {
		if o.dispatch.Supports(n.Shape) {
			n.Style = resolver.Resolve(o.profile, n.Color, string(n.Shape))
		}
	}

	frags := make([]*render.Fragment, len(nodes))
	meshes := make([]*kernel.Mesh, len(nodes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.workers)
	for i, n := range nodes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frags[i] = o.renderNode(n)
			if n.Shape.IsSolid() {
				meshes[i] = o.meshOf(n)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("render scene: %w", err)
	}

	var background string
	if b, ok := o.profile.(style.Backgrounds); ok {
		background = b.Background()
	}
	defs := render.Definitions(resolver.Definitions())
	doc := render.NewDocument(g.Canvas, defs, background, frags)
	for i, m := range meshes {
		if m == nil {
			continue
		}
		if doc.Meshes == nil {
			doc.Meshes = make(map[string]*kernel.Mesh)
		}
		doc.Meshes[nodes[i].ID] = m
	}
	return doc, nil
}

func (o *Orchestrator) meshOf(n *scene.SceneNode) *kernel.Mesh {
	m, err := o.dispatch.Mesh(n)
	if err != nil || m.IsEmpty() {
		return nil
	}
	logger.Debug("Solid built", "node", n.ID, "vertices", m.VertexCount(), "faces", m.FaceCount())
	return m
}

func (o *Orchestrator) renderNode(n *scene.SceneNode) *render.Fragment {
	f, err := o.dispatch.Render(n)
	switch {
	case errors.Is(err, render.ErrUnsupportedShape):
		logger.Warn("Unsupported shape, drawing placeholder", "node", n.ID, "shape", n.Shape)
		return render.Placeholder(n)
	case err != nil:
		logger.Warn("Renderer failed, drawing placeholder", "node", n.ID, "error", err)
		return render.Placeholder(n)
	}
	return f
}

// Compose runs BuildScene and Render.
func (o *Orchestrator) Compose(ctx context.Context, elements []scene.ParsedElement, canvas geom.Size) (*render.Document, error) {
	g, err := o.BuildScene(elements, canvas)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, g)
}
