// Package view provides the declarative view tree and the two-pass layout
// protocol that turns it into sizes and drawing commands.
//
// # Views
//
// Every node in a tree is a [View]. There are two kinds:
//
//   - Composite views describe themselves in terms of another view through
//     Body. They have no layout logic of their own.
//   - Primitive views implement [Primitive]: they answer size proposals and
//     draw themselves. Primitives embed [Builtin], whose Body aborts with a
//     [*ProtocolError].
//
// A user-defined view is usually a composite:
//
//	type badge struct{ label string }
//
//	func (b badge) Body() view.View {
//	    return view.Modify(view.Text{String: b.label}).
//	        Border(color.Black, 1)
//	}
//
// # Layout Protocol
//
// Layout runs in two passes. [Measure] passes a [geometry.ProposedSize]
// down the tree and returns the [geometry.Size] the view would take. [Draw]
// passes a committed size and a [canvas.Context] positioned at the view's
// origin. Both dispatch the same way: a primitive answers directly, a
// composite forwards to its body. A composite is never asked to size or draw
// itself.
//
// A view that changes context state during Draw brackets the change with
// Save and Restore, so siblings never observe each other's translation or
// colours.
//
// # Type Erasure
//
// [Erase] wraps a view of any concrete type in an [AnyView], capturing its
// measure and draw functions. Stacks hold their children as []AnyView.
//
// # Stacks
//
// [HStack] and [VStack] distribute the proposed main-axis extent among their
// children in a single left-to-right pass: each child is offered an equal
// share of what is still unclaimed, and whatever it takes is subtracted
// before the next child is asked. Children measured earlier have priority:
//
//	view.HStack(
//	    view.Modify(view.Rectangle{}).Frame(geometry.Dim(200), nil),
//	    view.Rectangle{},
//	    view.Rectangle{},
//	)
//	// under width 300 the children measure 200, 50 and 50 wide
//
// # Decorators
//
// [Border], [Overlay], [FixedSize], [Frame], [ForegroundColor] and
// [GeometryReader] wrap one child and add a single effect. [Modify] offers
// the same decorators as chained methods.
package view
