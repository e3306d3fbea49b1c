//go:build !tinygo || !bootdebug

package app

import "sparkcraft/hal"

func bootDiagStart(hal.HAL) {}

func bootStep(hal.HAL, string) {}
