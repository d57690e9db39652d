// cmd/cloud-file-uploader/main.go
package main

import (
	"github.com/bstardust/cloud-file-uploader/pkg/cli"
)

func main() {
	cli.Execute()
}
