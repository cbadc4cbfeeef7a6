// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command yamdbctl is the operator CLI: migrations, account promotion and
// signing key generation.
package main

import "github.com/taibuivan/yamdb/cmd/yamdbctl/command"

func main() {
	command.Execute()
}
