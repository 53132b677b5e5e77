/*
Package pipeline implements the staged pipeline engine.

A Template is a fixed, validated declaration of labelled stages whose steps carry
configuration-dependent arguments and inclusion predicates. Building a Template
against a domain.Config yields a Pipeline in which every step is resolved and
flagged as included or excluded. The same Pipeline feeds both the Executor, which
walks the included steps of the selected stages through a ports.Host, and the
Describe renderer, which shows every step of every stage without invoking anything.

	p := tmpl.Build(cfg)
	report, err := pipeline.NewExecutor(host).Run(ctx, p)
*/
package pipeline
