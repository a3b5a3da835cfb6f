// Package glfwplatform feeds GLFW window input into a draw-list
// backend's IO state.
//
// The platform installs window callbacks that queue events; each frame
// the application drains the queue through the backend's event handler
// and calls PrepareFrame to refresh display size, framebuffer scale and
// delta time.
//
// GLFW requires its calls on the main OS thread; lock it with
// runtime.LockOSThread in the program's main func before glfw.Init.
package glfwplatform
