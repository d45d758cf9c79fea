package rod

// fetchHTML requests the given API path on load and publishes the parsed
// body (or raw text) on window.result.
const fetchHTML = `<!DOCTYPE html>
<html>
<body>
	<script>
		const path = new URLSearchParams(location.search).get('api');
		fetch(path, {method: 'POST'})
			.then(r => r.text())
			.then(text => {
				try { window.result = JSON.parse(text); } catch (e) { window.result = text; }
				window.done = true;
			});
	</script>
</body>
</html>`

const browseJSON = `{
	"contents": {"keep": [1, 2], "drop": true},
	"responseContext": {"visitorData": "x"}
}`
