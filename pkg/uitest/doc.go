// Package uitest provides helpers for testing Bubble Tea models.
//
// [NewTestModel] runs models whose Update returns their concrete type, such
// as the list view, inside a [teatest.TestModel]:
//
//	tm := uitest.NewTestModel(t, model, uitest.Compact)
//	uitest.WaitFor(t, tm.Output(), uitest.Contains("number 0"))
//
// [Segments] and [StyleOf] decode the SGR sequences in rendered output, so
// tests can assert on styling without comparing raw escape codes:
//
//	uitest.UseTrueColor(t)
//	style, ok := uitest.StyleOf(model.View(), "number 7")
package uitest
