// The gdrom command inspects GD-ROM disc images and serves an emulated
// drive controller for debugging.
package main

func main() {
	Execute()
}
