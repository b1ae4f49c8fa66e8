package recommend

// InputView is one sidebar control as the front-ends render it.
type InputView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Help  string `json:"help"`
	Min   string `json:"min"`
	Max   string `json:"max"`
	Step  string `json:"step"`
	Value string `json:"value"`
}

// EchoCell is one column of the live "current input parameters" table.
type EchoCell struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// View is everything a front-end needs to draw the page.
type View struct {
	Title         string      `json:"title"`
	Subtitle      string      `json:"subtitle"`
	SidebarHeader string      `json:"sidebar_header"`
	EchoHeader    string      `json:"echo_header"`
	Inputs        []InputView `json:"inputs"`
	Echo          []EchoCell  `json:"echo"`
	Ready         bool        `json:"ready"`
	ButtonLabel   string      `json:"button_label,omitempty"`
	Warning       string      `json:"warning,omitempty"`
	LoadError     string      `json:"load_error,omitempty"`
	Phase         Phase       `json:"phase"`
	Outcome       *Outcome    `json:"outcome,omitempty"`
	Disclaimer    string      `json:"disclaimer"`
}
