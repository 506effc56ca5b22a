// Package dock decides where a dragged panel would dock.
//
// A [Resolver] classifies a pointer position over a candidate frame into a
// [Zone] and the preview rectangle ([Anchor]) to show for it. Evaluation is a
// fixed priority list of [Rule] values, first match wins:
//
//  1. the frame's own tab strip when the drag started there (STACKED, Self)
//  2. the tab strip of any frame with a title bar (STACKED)
//  3. edge splits, only when the frame may be split: top and bottom first
//     for tall frames, left and right first otherwise
//
// Edge bands cover the outer quarter of the frame along the split axis; the
// preview covers half of it, flush with that edge. Positions matching no rule
// are the normal case during a drag and are reported as a plain false.
//
// [Drag] wraps the resolver in the Idle, Dragging, Dropping and Cancelled
// phases a host controller steps through for one gesture.
package dock
