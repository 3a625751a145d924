package grouper

import (
	"testing"

	"github.com/lumipallolabs/imagedive/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func img(name, path string) model.ImageFile {
	return model.ImageFile{Name: name, Path: path, Locator: path + "/" + name}
}

func sample() model.ProjectDirCollection {
	return model.ProjectDirCollection{
		CommonBase: "/proj/",
		Dirs: []model.ProjectDir{
			{Base: "A", Images: []model.ImageFile{
				img("a1.png", ""),
				img("a2.png", "/icons"),
				img("a3.png", "/icons"),
				img("a4.png", ""),
			}},
			{Base: "B", Images: []model.ImageFile{img("b1.png", "/x")}},
		},
	}
}

func titles(p *Project) []string {
	out := make([]string, len(p.Groups))
	for i, g := range p.Groups {
		out[i] = g.Title
	}
	return out
}

func TestFoldRunsWithoutSort(t *testing.T) {
	tree := Fold(sample(), Options{})

	require.Len(t, tree.Projects, 2)
	a := tree.Projects[0]
	assert.Equal(t, "/proj/A", a.Root)
	assert.Equal(t, []string{"/", "/icons", "/"}, titles(a))
	assert.Equal(t, a.Groups[0].Key, a.Groups[2].Key)
	assert.Equal(t, 5, tree.ImageCount())
	assert.Equal(t, 4, tree.GroupCount())
}

func TestFoldSortByPathMergesDirectories(t *testing.T) {
	tree := Fold(sample(), Options{SortByPath: true})

	a := tree.Projects[0]
	assert.Equal(t, []string{"/", "/icons"}, titles(a))
	require.Len(t, a.Groups[0].Images, 2)
	assert.Equal(t, "a1.png", a.Groups[0].Images[0].Name)
	assert.Equal(t, "a4.png", a.Groups[0].Images[1].Name)
}

func TestFoldDoesNotReorderInput(t *testing.T) {
	coll := sample()
	Fold(coll, Options{SortByPath: true})
	assert.Equal(t, "/icons", coll.Dirs[0].Images[1].Path)
}

func TestFoldKeysAreStable(t *testing.T) {
	first := Fold(sample(), Options{SortByPath: true})
	second := Fold(sample(), Options{SortByPath: true})

	for i, p := range first.Projects {
		assert.Equal(t, p.Key, second.Projects[i].Key)
		for j, g := range p.Groups {
			assert.Equal(t, g.Key, second.Projects[i].Groups[j].Key)
			assert.Equal(t, g.Key.ID(), second.Projects[i].Groups[j].Key.ID())
		}
	}
	assert.Equal(t, DirectoryKey("A", "/icons"), first.Projects[0].Groups[1].Key)
	assert.NotEqual(t, ProjectKey("A").ID(), DirectoryKey("A", "").ID())
}

func TestFoldEmpty(t *testing.T) {
	tree := Fold(model.NewCollection(), Options{SortByPath: true})
	assert.Empty(t, tree.Projects)
	assert.Equal(t, 0, tree.ImageCount())
}

func TestStateSurvivesRescan(t *testing.T) {
	tree := Fold(sample(), Options{SortByPath: true})
	tree.Projects[0].Groups[1].Expanded = false
	tree.Projects[1].Expanded = false
	state := Capture(tree)

	coll := sample()
	coll.Dirs[0].Images = append(coll.Dirs[0].Images, img("new.png", "/fresh"))
	next := Fold(coll, Options{SortByPath: true})
	Restore(next, state)

	a := next.Projects[0]
	require.Equal(t, []string{"/", "/fresh", "/icons"}, titles(a))
	assert.False(t, a.Groups[2].Expanded)
	assert.True(t, a.Groups[0].Expanded)
	assert.False(t, next.Projects[1].Expanded)

	fresh := a.Groups[1]
	assert.True(t, fresh.Expanded)
	assert.True(t, fresh.IsNew)
	assert.False(t, a.Groups[0].IsNew)
}

func TestRestoreWithoutHistoryMarksNothingNew(t *testing.T) {
	tree := Fold(sample(), Options{})
	Restore(tree, nil)
	for _, p := range tree.Projects {
		assert.False(t, p.IsNew)
		assert.True(t, p.Expanded)
	}
}

func TestToggleAndSetAll(t *testing.T) {
	tree := Fold(sample(), Options{})
	state := Capture(tree)

	key := tree.Projects[0].Groups[0].Key
	assert.False(t, state.Toggle(tree, key))
	assert.False(t, tree.Projects[0].Groups[0].Expanded)
	assert.False(t, tree.Projects[0].Groups[2].Expanded)

	tree.SetAll(false)
	assert.False(t, tree.Projects[1].Expanded)
	tree.SetAll(true)
	assert.True(t, tree.Projects[0].Groups[1].Expanded)
}

func TestFindAndFilter(t *testing.T) {
	tree := Fold(sample(), Options{SortByPath: true})

	p, g, found, ok := tree.Find("/x/b1.png")
	require.True(t, ok)
	assert.Equal(t, "B", p.Title)
	assert.Equal(t, "/x", g.Title)
	assert.Equal(t, "b1.png", found.Name)

	_, _, _, ok = tree.Find("nope")
	assert.False(t, ok)

	icons := tree.Projects[0].Groups[1]
	assert.Len(t, icons.Filter(""), 2)
	assert.Len(t, icons.Filter("a3"), 1)
	assert.Empty(t, icons.Filter("A3"))
}
