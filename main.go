/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/taskflow-app/taskflow/cmd"

func main() {
	cmd.Execute()
}
