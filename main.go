// Entrypoint for the smpldemo CLI; all handling lives in cmd/root.go.
package main

import (
	"github.com/go-smpl/smpl/cmd"
)

func main() {
	cmd.Execute()
}
