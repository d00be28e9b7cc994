package main

import "github.com/Stendhalsynd/RoutineMate-sub000/cmd/routinemate"

func main() {
	routinemate.Execute()
}
