/*
Copyright © 2026 Wyn Labs <oss@wynlabs.io>
*/
package main

import "github.com/wynlabs/taxo/cmd"

func main() {
	cmd.Execute()
}
