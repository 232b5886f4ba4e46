package mock

import "github.com/provdir/provdir"

var (
	_ provdir.Fragment       = (*Fragment)(nil)
	_ provdir.FragmentParser = (*FragmentParser)(nil)
)

// Fragment is a mock implementation of provdir.Fragment.
type Fragment struct {
	FindFn    func(selector string) (provdir.Fragment, error)
	FindAllFn func(selector string) ([]provdir.Fragment, error)
	TextFn    func() (string, error)
	AttrFn    func(name string) (string, error)
}

func (f *Fragment) Find(selector string) (provdir.Fragment, error) {
	return f.FindFn(selector)
}

func (f *Fragment) FindAll(selector string) ([]provdir.Fragment, error) {
	return f.FindAllFn(selector)
}

func (f *Fragment) Text() (string, error) {
	return f.TextFn()
}

func (f *Fragment) Attr(name string) (string, error) {
	return f.AttrFn(name)
}

// FragmentParser is a mock implementation of provdir.FragmentParser.
type FragmentParser struct {
	ParseFragmentsFn func(html string) ([]provdir.Fragment, error)
}

func (p *FragmentParser) ParseFragments(html string) ([]provdir.Fragment, error) {
	return p.ParseFragmentsFn(html)
}
