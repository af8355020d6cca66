package replaces

import "unicode/utf8"

// Threshold is the haystack length, in characters, from which the automaton
// outperforms the brute force search.
const Threshold = 1500

// Dispatcher picks a strategy by haystack length. The zero value uses Threshold.
type Dispatcher struct {
	Threshold int
}

func (d Dispatcher) Select(inputLength int) Strategy {
	threshold := d.Threshold
	if threshold <= 0 {
		threshold = Threshold
	}
	if inputLength < threshold {
		return BruteForce{}
	}
	return Automaton{}
}

func (d Dispatcher) Replace(text string, needles map[string]string, options ...Option) string {
	if text == "" || len(needles) == 0 {
		return text
	}
	return d.Select(utf8.RuneCountInString(text)).Replace(text, needles, options...)
}

func (d Dispatcher) Find(text string, needles map[string]string, options ...Option) []Match {
	if text == "" || len(needles) == 0 {
		return nil
	}
	return d.Select(utf8.RuneCountInString(text)).Find(text, needles, options...)
}

// Func binds options to the dispatcher's Replace.
func (d Dispatcher) Func(options ...Option) Func {
	return func(text string, needles map[string]string) string {
		return d.Replace(text, needles, options...)
	}
}

// FindFunc binds options to the dispatcher's Find.
func (d Dispatcher) FindFunc(options ...Option) FindFunc {
	return func(text string, needles map[string]string) []Match {
		return d.Find(text, needles, options...)
	}
}

func Select(inputLength int) Strategy {
	return Dispatcher{}.Select(inputLength)
}

func Replace(text string, needles map[string]string, options ...Option) string {
	return Dispatcher{}.Replace(text, needles, options...)
}
