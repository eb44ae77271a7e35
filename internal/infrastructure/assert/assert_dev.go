//go:build !release

package assert

const enabled = true
