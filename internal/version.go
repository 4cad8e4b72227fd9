package internal

var Version = "0.1.0" // version of the pye binary
