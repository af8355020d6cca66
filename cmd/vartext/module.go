package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/vartext/chains"
	"github.com/reusee/vartext/debugs"
	"github.com/reusee/vartext/defs"
	"github.com/reusee/vartext/processors"
	"github.com/reusee/vartext/scripts"
)

type Module struct {
	dscope.Module
	Processors processors.Module
	Defs       defs.Module
	Scripts    scripts.Module
	Chains     chains.Module
	Debugs     debugs.Module
}

func (Module) Definitions(
	source *defs.Source,
) processors.Definitions {
	return source
}
