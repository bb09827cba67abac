package main

import "github.com/linuxfab/compress-picture-to70/cmd"

func main() {
	cmd.Execute()
}
