package main

import "github.com/ValentinKolb/pmkv/cmd"

func main() {
	cmd.Execute()
}
