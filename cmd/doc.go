// Package cmd contains the command line tools that run retrieval experiments and evaluate them. It also contains the
// code the tools share, such as flag parsing, configuration, and logging setup.
package cmd
