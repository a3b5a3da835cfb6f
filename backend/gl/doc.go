// Package gl renders draw lists through OpenGL 4.1 core.
//
// The renderer issues draws into whatever framebuffer is bound when
// Render is called. GL state touched during a frame (program, blend
// function, scissor box, enable bits) is saved before rendering and
// restored after, so the renderer can share the context with other
// drawing code.
//
// glScissor uses a bottom-left origin, so scissor rectangles are
// flipped against the framebuffer height before being applied.
//
// All methods must run on the thread that owns the GL context.
package gl
